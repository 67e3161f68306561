//go:build unit

package internal_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/rios0rios0/gitflow-hooks/internal"
)

func TestRegisterProviders(t *testing.T) {
	t.Parallel()

	t.Run("should resolve every controller from the container", func(t *testing.T) {
		t.Parallel()

		// given
		container := dig.New()
		require.NoError(t, internal.RegisterProviders(container))

		// when
		var app *internal.AppInternal
		err := container.Invoke(func(resolved *internal.AppInternal) {
			app = resolved
		})

		// then
		require.NoError(t, err)
		uses := make([]string, 0, len(app.GetControllers()))
		for _, controller := range app.GetControllers() {
			uses = append(uses, strings.Fields(controller.GetBind().Use)[0])
		}
		assert.Equal(t, []string{"run", "classify", "commands", "check-merge"}, uses)
	})
}
