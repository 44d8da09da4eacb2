package uml

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDumpRoundTripsAsYAML(t *testing.T) {
	sm, _, _ := buildToggle()

	out, err := Dump[string](sm)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	var model dumpModel
	require.NoError(t, yaml.Unmarshal(out, &model))
	require.Equal(t, "toggle", model.Name)
	require.Equal(t, "StateMachine", model.Root.Kind)

	var names []string
	for _, region := range model.Root.Regions {
		for _, child := range region.Children {
			names = append(names, child.Name)
		}
	}
	require.Contains(t, names, "A")
	require.Contains(t, names, "B")
}
