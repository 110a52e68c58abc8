// Package scene runs a headless page inside an Ebitengine window.
//
// A Scene owns a headless.Document and headless.Clock. Each tick it turns
// mouse wheel and keyboard input into page scroll and advances the clock by
// one frame, so binders created with Scene.Bind see the same scroll events
// and frame callbacks a browser would deliver. Draw renders every element
// that has a background-color as a rectangle, honouring inline top, left,
// width, height, opacity, position and transform.
//
//	s := scene.New(800, 600)
//	s.Document().Build(nil, page)
//	s.Bind(nil, file.Options())
//	if err := scene.Run(s, scene.RunConfig{Title: "parallax"}); err != nil {
//		log.Fatal(err)
//	}
package scene
