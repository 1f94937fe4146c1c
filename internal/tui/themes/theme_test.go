package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamed(t *testing.T) {
	theme, err := Named("")
	require.NoError(t, err)
	assert.Equal(t, "default", theme.Name)

	theme, err = Named("catppuccin")
	require.NoError(t, err)
	assert.Equal(t, CatppuccinMocha.Primary, theme.Primary)

	_, err = Named("solarized")
	assert.Error(t, err)
}
