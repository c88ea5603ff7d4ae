// Package viewurl exposes named-route URLs to templ templates.
//
// The helpers read the request's urlgen.URLs from the render context, so
// templates need no generator argument:
//
//	templ UserCard(u User) {
//	    <a href={ viewurl.Route(ctx, "users.show", urlgen.P("id", u.ID)) }>{ u.Name }</a>
//	    <img src={ viewurl.Asset(ctx, "img/avatar.png") }/>
//	}
//
// Every helper returns an error alongside the URL; templ aborts rendering
// with it, so a missing route never renders as a broken link.
package viewurl
