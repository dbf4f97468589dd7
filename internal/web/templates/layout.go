package templates

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
)

// HTMXSource is the script URL of htmx. The server's CSP allows its origin.
const HTMXSource = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// Layout wraps body in the page shell with the entity sidebar.
func Layout(title string, sidebar []EntityGroup, active string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(` | Catalog Admin</title>`)
		h.raw(`<link rel="stylesheet" href="/static/app.css">`)
		h.raw(`<script src="` + HTMXSource + `" defer></script>`)
		h.raw(`</head><body><div class="shell"><nav class="sidebar"><a class="brand" href="/">Catalog Admin</a>`)
		for _, g := range sidebar {
			h.raw(`<div class="nav-group"><h2>`)
			h.text(g.Name)
			h.raw(`</h2><ul>`)
			for _, e := range g.Entities {
				h.raw(`<li`)
				if e.Key == active {
					h.attr("class", "active")
				}
				h.raw(`><a`)
				h.attr("href", "/table/"+url.PathEscape(e.Key))
				h.raw(`>`)
				h.text(e.Label)
				h.raw(`</a></li>`)
			}
			h.raw(`</ul></div>`)
		}
		h.raw(`</nav><main class="content"><div id="alerts" aria-live="polite"></div>`)
		h.render(ctx, body)
		h.raw(`</main></div></body></html>`)
		return h.err
	})
}

// Dashboard lists every entity group with its row count.
func Dashboard(groups []EntityGroup) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<h1>Catalog</h1>`)
		for _, g := range groups {
			h.raw(`<section class="group"><h2>`)
			h.text(g.Name)
			h.raw(`</h2><div class="cards">`)
			for _, e := range g.Entities {
				h.raw(`<a class="card"`)
				h.attr("href", "/table/"+url.PathEscape(e.Key))
				h.raw(`><span class="card-title">`)
				h.text(e.Label)
				h.raw(`</span><span class="card-count">`)
				h.text(strconv.Itoa(e.Rows))
				h.raw(` rows</span></a>`)
			}
			h.raw(`</div></section>`)
		}
		return h.err
	})
	return Layout("Dashboard", groups, "", body)
}

// ErrorAlert renders an error message fragment for HTMX swaps.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="alert alert-error" role="alert"><p class="alert-message">`)
		h.text(message)
		h.raw(`</p>`)
		if action != "" {
			h.raw(`<p class="alert-action">`)
			h.text(action)
			h.raw(`</p>`)
		}
		if code != "" {
			h.raw(`<p class="alert-code">Code: `)
			h.text(code)
			h.raw(`</p>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}
