// Package template implements the placeholder language of the Milvus
// configuration template.
//
// A template is plain text in which a line may carry one placeholder:
//
//	{{ name }}
//	{{ name: default }}
//	{{ name(type) }}
//	{{ name(type): default }}
//
// The type is one of string, integer or boolean (str, int and bool are accepted
// as aliases). Unannotated placeholders are strings.
//
// # Variable Table
//
// Parse turns a Document into a Table: an ordered set of typed variables plus the
// mapping from marker text to variable name. A string or boolean placeholder without
// a default starts unresolved; an integer without a default starts at 0.
//
// # Rendering
//
// Render replaces every marker with its variable's value and fails if a variable is
// unresolved. WriteFile persists the result atomically.
//
// # Usage
//
//	doc, err := template.Load("")
//	table, err := template.Parse(doc)
//	_ = table.Set("proxy_port", 19530)
//	text, err := template.Render(doc, table)
package template
