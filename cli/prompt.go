package cli

import (
	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"

	pm "pfeifer.dev/polyproj/math"
	"pfeifer.dev/polyproj/settings"
)

// promptQuery asks for each coordinate of a query point in turn, offering
// the last query as the default.
func promptQuery() (pm.Point, error) {
	last, hasLast := settings.LoadLastQuery()
	lastCoords := [3]float64{last.X, last.Y, last.Z}

	values := [3]string{}
	for i, axis := range axes {
		prompt := promptui.Prompt{
			Label: axis,
			Validate: func(input string) error {
				_, err := ParseCoordinate(axis, input)
				return err
			},
		}
		if hasLast {
			prompt.Default = formatFloat(lastCoords[i], -1)
		}

		result, err := prompt.Run()
		if err != nil {
			return pm.Point{}, errors.Wrap(err, "prompt failed")
		}
		values[i] = result
	}

	q, err := ParseQuery(values[0], values[1], values[2])
	if err != nil {
		return pm.Point{}, err
	}
	settings.SaveLastQuery(q)
	return q, nil
}

// promptAgain asks whether to project another point.
func promptAgain() bool {
	prompt := promptui.Select{
		Label: "Select Action",
		Items: []string{"Project another point", "Exit"},
	}

	i, _, err := prompt.Run()
	return err == nil && i == 0
}
