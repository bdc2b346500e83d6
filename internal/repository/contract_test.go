package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRepositoryContract exercises behaviour every store driver must share.
// missingID must be well formed for the driver but unknown to it.
func runRepositoryContract(t *testing.T, repos *Repositories, missingID string) {
	ctx := context.Background()

	t.Run("create is idempotent by username", func(t *testing.T) {
		first, created, err := repos.User.Create(ctx, "contract-alice")
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEmpty(t, first.ID)

		second, created, err := repos.User.Create(ctx, "contract-alice")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		bob, _, err := repos.User.Create(ctx, "contract-bob")
		require.NoError(t, err)
		carol, _, err := repos.User.Create(ctx, "contract-carol")
		require.NoError(t, err)

		users, err := repos.User.List(ctx)
		require.NoError(t, err)

		index := map[string]int{}
		for i, u := range users {
			index[u.ID] = i
		}
		require.Contains(t, index, bob.ID)
		require.Contains(t, index, carol.ID)
		assert.Less(t, index[bob.ID], index[carol.ID])
	})

	t.Run("get by id", func(t *testing.T) {
		dave, _, err := repos.User.Create(ctx, "contract-dave")
		require.NoError(t, err)

		found, err := repos.User.GetByID(ctx, dave.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "contract-dave", found.Username)

		upper, err := repos.User.GetByID(ctx, strings.ToUpper(dave.ID))
		require.NoError(t, err)
		require.NotNil(t, upper)
		assert.Equal(t, dave.ID, upper.ID)

		missing, err := repos.User.GetByID(ctx, missingID)
		require.NoError(t, err)
		assert.Nil(t, missing)

		_, err = repos.User.GetByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, model.ErrInvalidID)
	})

	t.Run("log filters and limits", func(t *testing.T) {
		erin, _, err := repos.User.Create(ctx, "contract-erin")
		require.NoError(t, err)

		dates := []time.Time{
			time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC),
		}
		for i, d := range dates {
			require.NoError(t, repos.Exercise.Add(ctx, model.ExerciseRecord{
				UserID:      erin.ID,
				Description: fmt.Sprintf("run-%d", i),
				Duration:    30 + i,
				Date:        d,
			}))
		}

		all, err := repos.Exercise.Log(ctx, model.LogQuery{UserID: erin.ID})
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, "run-0", all[0].Description)
		assert.Equal(t, 30, all[0].Duration)
		assert.True(t, dates[0].Equal(all[0].Date))

		from, to := dates[0], dates[2]
		january, err := repos.Exercise.Log(ctx, model.LogQuery{UserID: erin.ID, From: &from, To: &to})
		require.NoError(t, err)
		assert.Len(t, january, 3)
		for _, r := range january {
			assert.NotEqual(t, "run-3", r.Description)
		}

		limited, err := repos.Exercise.Log(ctx, model.LogQuery{UserID: erin.ID, Limit: 1})
		require.NoError(t, err)
		require.Len(t, limited, 1)
		assert.Equal(t, "run-0", limited[0].Description)

		other, err := repos.Exercise.Log(ctx, model.LogQuery{UserID: missingID})
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("durations beyond 32 bits", func(t *testing.T) {
		frank, _, err := repos.User.Create(ctx, "contract-frank")
		require.NoError(t, err)

		const long = 1 << 40
		require.NoError(t, repos.Exercise.Add(ctx, model.ExerciseRecord{
			UserID:      frank.ID,
			Description: "ultra",
			Duration:    long,
			Date:        time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
		}))

		got, err := repos.Exercise.Log(ctx, model.LogQuery{UserID: frank.ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, long, got[0].Duration)
	})
}
