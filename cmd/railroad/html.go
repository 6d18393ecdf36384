package main

import (
	"html/template"
	"os"

	"github.com/abnfkit/railroad"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
section { margin-bottom: 2.5em; }
pre { background: #f6f6f6; padding: 0.5em 1em; overflow-x: auto; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Rules}}<section id="{{.Name}}">
<h2>{{.Name}}</h2>
<pre>{{.Original}}</pre>
{{.Diagram}}
</section>
{{end}}</body>
</html>
`))

type pageData struct {
	Title string
	Rules []ruleData
}

type ruleData struct {
	Name     string
	Original string
	Diagram  template.HTML
}

// writeHTML renders one document containing every rule's original
// definition and its diagram, in rule-name order.
func writeHTML(path, title string, results *railroad.Results) error {
	data := pageData{Title: title}
	results.Scan(func(r *railroad.Result) bool {
		data.Rules = append(data.Rules, ruleData{
			Name:     r.Name,
			Original: r.Original,
			// the SVG fragment is produced by this program, not user input
			Diagram: template.HTML(r.SVG),
		})
		return true
	})

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pageTemplate.Execute(f, data); err != nil {
		return err
	}
	return f.Close()
}
