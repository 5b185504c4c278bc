package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, CatppuccinMocha.Primary, GetTheme("catppuccin-mocha").Primary)
	assert.Equal(t, Default.Primary, GetTheme("default").Primary)
	assert.Equal(t, Default.Primary, GetTheme("unknown").Primary)
}

func TestThemesDiffer(t *testing.T) {
	assert.NotEqual(t, Default.Primary, CatppuccinMocha.Primary)
	assert.NotEqual(t, Default.Background, CatppuccinMocha.Background)
	assert.Len(t, Names, 2)
}
