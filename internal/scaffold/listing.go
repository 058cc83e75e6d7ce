// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sopforge/internal/module"
)

// RebuildListing regenerates the root index.html from the current module
// set in one atomic write. It is the only shared artifact of a batch run,
// so it is rebuilt once after all per-module work, never incrementally.
func (s *Scaffolder) RebuildListing(modules []*module.Module) error {
	var cards strings.Builder
	for _, m := range modules {
		class := "card"
		if m.Populated() {
			class = "card populated"
		}
		fmt.Fprintf(&cards,
			"        <a class=%q href=\"./%s/\"><div class=\"slug\">%s</div><div class=\"title\">%s</div></a>\n",
			class, m.Slug, m.Slug, s.norm.Title(m.Slug))
	}

	page := fmt.Sprintf(landingTemplate, cards.String())
	return module.WriteFileAtomic(filepath.Join(s.root, "index.html"), []byte(page))
}

// ensureIndex writes a module's index.html. Existing pages are kept unless
// stamp is set. The shared bootstrap page is used when the site assets
// exist; otherwise a standalone placeholder.
func (s *Scaffolder) ensureIndex(m *module.Module, stamp bool) error {
	idx := filepath.Join(m.Dir, "index.html")
	if !stamp {
		if _, err := os.Stat(idx); err == nil {
			return nil
		}
	}

	var page string
	if s.hasSharedAssets() {
		page = bootstrapPage
	} else {
		page = fmt.Sprintf(placeholderTemplate, s.norm.Title(m.Slug), s.norm.Title(m.Slug))
	}
	return module.WriteFileAtomic(idx, []byte(page))
}

func (s *Scaffolder) hasSharedAssets() bool {
	css := filepath.Join(s.root, "assets", "module.css")
	js := filepath.Join(s.root, "assets", "module.js")
	if _, err := os.Stat(css); err != nil {
		return false
	}
	_, err := os.Stat(js)
	return err == nil
}

const landingTemplate = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>SOP Learning Modules</title>
    <style>
      :root { --bg: #f9fafb; --text: #0f172a; --muted: #64748b; --accent: #2563eb; --border: #e5e7eb; }
      * { box-sizing: border-box; }
      body { margin: 0; font-family: system-ui, sans-serif; background: var(--bg); color: var(--text); }
      .wrap { max-width: 1060px; margin: 0 auto; padding: 32px 20px 48px; }
      h1 { font-size: 28px; margin: 0 0 6px; }
      .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 14px; margin-top: 24px; }
      a.card { display: block; padding: 14px 16px; background: #fff; border: 1px solid var(--border); border-radius: 10px; color: inherit; text-decoration: none; }
      a.card:hover { border-color: var(--accent); }
      a.card.populated { border-left: 3px solid var(--accent); }
      .slug { font-weight: 600; font-size: 15px; word-break: break-word; }
      .title { color: var(--muted); font-size: 13px; margin-top: 4px; }
    </style>
  </head>
  <body>
    <div class="wrap">
      <header>
        <h1>SOP Learning Modules</h1>
      </header>
      <main class="grid">
%s      </main>
    </div>
  </body>
</html>
`

const placeholderTemplate = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>%s | Learning Module</title>
    <style>
      body { margin: 0; font-family: system-ui, sans-serif; background: #f9fafb; color: #0f172a; }
      .wrap { max-width: 800px; margin: 0 auto; padding: 40px 20px; }
      .card { background: #fff; border: 1px solid #e5e7eb; border-radius: 12px; padding: 24px; }
    </style>
  </head>
  <body>
    <div class="wrap">
      <div class="card">
        <h1>Future site of %s Learning Module</h1>
        <p>This is a placeholder. The interactive module will be built here.</p>
        <p><a href="../">&larr; Back to all modules</a></p>
      </div>
    </div>
  </body>
</html>
`

const bootstrapPage = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Learning Module</title>
    <link rel="stylesheet" href="../assets/module.css" />
  </head>
  <body>
    <div class="wrap" id="app"></div>
    <script defer src="../assets/module.js"></script>
  </body>
</html>
`
