package viewurl

import (
	"context"
	"errors"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/forgeroute/pkg/urlgen"
)

// ErrNoURLs is returned when the render context carries no URL view.
// Install urlgen.Middleware or call urlgen.WithURLs before rendering.
var ErrNoURLs = errors.New("viewurl: no url generator in context")

func urls(ctx context.Context) (*urlgen.URLs, error) {
	u, ok := urlgen.FromContext(ctx)
	if !ok {
		return nil, ErrNoURLs
	}
	return u, nil
}

// Route returns the relative URL of a named route.
//
//	<a href={ viewurl.Route(ctx, "users.show", urlgen.P("id", user.ID)) }>
func Route(ctx context.Context, name string, params urlgen.Params) (templ.SafeURL, error) {
	u, err := urls(ctx)
	if err != nil {
		return "", err
	}
	s, err := u.Route(name, params)
	if err != nil {
		return "", err
	}
	return templ.SafeURL(s), nil
}

// RouteURL returns the absolute URL of a named route.
func RouteURL(ctx context.Context, name string, params urlgen.Params) (templ.SafeURL, error) {
	u, err := urls(ctx)
	if err != nil {
		return "", err
	}
	s, err := u.RouteURL(name, params)
	if err != nil {
		return "", err
	}
	return templ.SafeURL(s), nil
}

// To returns the absolute URL of path with extra path segments.
func To(ctx context.Context, path string, extra ...any) (templ.SafeURL, error) {
	u, err := urls(ctx)
	if err != nil {
		return "", err
	}
	return templ.SafeURL(u.To(path, extra...)), nil
}

// Secure is To over https.
func Secure(ctx context.Context, path string, extra ...any) (templ.SafeURL, error) {
	u, err := urls(ctx)
	if err != nil {
		return "", err
	}
	return templ.SafeURL(u.Secure(path, extra...)), nil
}

// Asset returns the URL of a static file.
func Asset(ctx context.Context, path string) (templ.SafeURL, error) {
	u, err := urls(ctx)
	if err != nil {
		return "", err
	}
	return templ.SafeURL(u.Asset(path)), nil
}

// Current returns the absolute URL of the request being rendered.
func Current(ctx context.Context) (templ.SafeURL, error) {
	u, err := urls(ctx)
	if err != nil {
		return "", err
	}
	return templ.SafeURL(u.Current()), nil
}

// Link renders an anchor to a named route. Rendering fails with the
// generation error when the route cannot be built.
func Link(name string, params urlgen.Params, text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		href, err := Route(ctx, name, params)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, `<a href="`+templ.EscapeString(string(href))+`">`+templ.EscapeString(text)+`</a>`)
		return err
	})
}
