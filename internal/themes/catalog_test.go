package themes_test

import (
	"testing"

	"github.com/myrjola/checkpoint/internal/models"
	"github.com/myrjola/checkpoint/internal/themes"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	for _, theme := range models.Themes {
		t.Run(string(theme), func(t *testing.T) {
			def, err := themes.Get(theme)
			require.NoError(t, err)
			require.NotEmpty(t, def.Name)
			require.NotEmpty(t, def.Icon)
			require.Len(t, def.Rules, 5)
			require.Len(t, def.Checkpoints, 4)
		})
	}

	_, err := themes.Get("werewolf")
	require.ErrorIs(t, err, models.ErrUnknownTheme)
}

func TestListIsACopy(t *testing.T) {
	all := themes.List()
	require.Len(t, all, len(models.Themes))

	zombie := all[models.ThemeZombie]
	zombie.Rules[0] = "anything goes"

	fresh, err := themes.Get(models.ThemeZombie)
	require.NoError(t, err)
	require.Equal(t, "Temperature must be below 39°C", fresh.Rules[0])
}
