// Package headless is an in-memory host for scrollbind: a Document with an
// element tree and a selector engine, a deterministic Clock that implements
// scrollbind.Scheduler, and a Script runner that scrolls the page and takes
// snapshots of every element.
//
// It backs the command-line tool and the Ebitengine scene, and makes binders
// testable without a browser:
//
//	doc := headless.NewDocument(600)
//	doc.Build(nil, []headless.ElementSpec{{Name: "header", Height: 80}})
//	clock := headless.NewClock()
//	b := scrollbind.New(nil, doc, clock, opts)
//	doc.SetScrollTop(40)
//	clock.Tick()
package headless
