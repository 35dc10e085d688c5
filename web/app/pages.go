package app

import "github.com/JaimeStill/lox/pkg/web"

const layout = "app.html"

// Form is the view data of the registration page.
type Form struct {
	Action string
	Login  string
}

func testMeta() []web.Meta {
	return []web.Meta{
		web.Title("This is a test"),
		web.Named("description", "Welcome to React Router!"),
	}
}

func loxMeta() []web.Meta {
	return []web.Meta{
		web.Title("Lox"),
		web.Named("description", "Welcome to Lox!"),
	}
}

func notFoundMeta() []web.Meta {
	return []web.Meta{
		web.Title("Not Found"),
		web.Named("description", "The requested page does not exist."),
	}
}

// Pages returns the routed pages of the app. apiBasePath is where the
// registration form submits.
func Pages(apiBasePath string) []web.PageDef {
	form := Form{
		Action: apiBasePath + "/auth/register",
		Login:  apiBasePath + "/auth/login",
	}
	return []web.PageDef{
		{Route: "/{$}", Template: "registration.html", Meta: testMeta, Bundle: "app", Data: form},
		{Route: "/register", Template: "registration.html", Meta: testMeta, Bundle: "app", Data: form},
		{Route: "/welcome", Template: "welcome.html", Meta: loxMeta, Bundle: "app"},
	}
}

var notFound = web.PageDef{Template: "404.html", Meta: notFoundMeta}
