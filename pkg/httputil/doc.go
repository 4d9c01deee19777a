// Package httputil holds the JSON request and response helpers shared by
// the playground server's handlers.
//
// Errors are answered with the status [errors.HTTPStatus] picks for their
// code and a body of the form:
//
//	{"error": {"code": "INVALID_SCENE", "message": "trigger \"x\" is not a node"}}
package httputil
