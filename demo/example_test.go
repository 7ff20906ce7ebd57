package demo_test

import (
	"fmt"
	"os"

	"polyfield/demo"
	"polyfield/internal/inspect"
	"polyfield/internal/textui"
)

func Example() {
	player := demo.NewPlayer()

	surface := textui.New(os.Stdout)
	in := inspect.New(surface)
	in.SetExpanded("Person", true)

	student := "Student"
	surface.Stage(textui.Step{Path: "Person", Select: &student})

	if err := in.Render(player); err != nil {
		fmt.Println(err)
	}

	// Output:
	// Health = 0
	// Person: <None (null)>
	//   Name = "ABC" (read-only)
	//   + Courses
	// A = 10
	// B = 20 (read-only)
}
