package main

// General API information. The document served under /swagger/ is
// registered by internal/httpapi/swagger_doc.go; build with -tags=swagger
// to enable it.
//
// @title           hellod API
// @version         1.0
// @description     HTTP surface over the hellod state store: read state, dispatch actions, load users.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
