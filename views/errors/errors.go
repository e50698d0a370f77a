package errors

import "github.com/a-h/templ"

func Error404() templ.Component {
	return GenericError(404, "Page not found")
}

func Error500() templ.Component {
	return GenericError(500, "Something went wrong. Please try again later.")
}
