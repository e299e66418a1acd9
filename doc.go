/*
Package impressionist turns a photograph into an impressionist painting by
stamping brush marks along the gestures of the user. Every pointer sample is
mapped onto the displayed photo, the color underneath is sampled and a
square, circle or hatch mark is painted on an off-screen surface. The size of
the mark follows the speed of the pointer.

The package provides a command line interface with an interactive window and
a headless mode replaying recorded gestures. To check the supported commands
type:

	$ impressionist --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"image"

		"github.com/esimov/impressionist"
	)

	func main() {
		photo := impressionist.NewPhoto(img, image.Pt(800, 600))
		surface := impressionist.NewSurface(800, 600, impressionist.Blank)
		session := impressionist.NewSession(surface, photo, photo, impressionist.DefaultBrush(), nil)

		session.Handle(impressionist.Event{Action: impressionist.Press, Sample: impressionist.PointerSample{X: 400, Y: 300, Time: 1}})
		session.Handle(impressionist.Event{Action: impressionist.Move, Sample: impressionist.PointerSample{X: 420, Y: 310, Time: 9}})
		session.Handle(impressionist.Event{Action: impressionist.Release})
	}
*/
package impressionist
