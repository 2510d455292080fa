package http

// StatusCode is exported for testing
var StatusCode = statusCode
