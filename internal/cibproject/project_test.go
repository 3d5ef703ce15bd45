package cibproject_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cib-project/cib/internal/cibproject"
	"github.com/cib-project/cib/internal/nexus"
)

func baseArgs() *cibproject.ProjectArgs {
	return &cibproject.ProjectArgs{
		Person:        cibproject.PersonArgs{Name: "Riley", WorkWeekday: true},
		Notifications: cibproject.NotificationsArgs{Enabled: true, Priority: 1},
		Log:           cibproject.LogArgs{Level: "info"},
	}
}

func TestBuildComposesBothRoutinesOnAWorkWeekday(t *testing.T) {
	n, outcome, err := cibproject.Build(context.Background(), baseArgs(), nil, false)
	require.NoError(t, err)
	assert.False(t, outcome.Blocked)

	morning, ok := nexus.Service[cibproject.MorningRoutine](n)
	require.True(t, ok)
	assert.NotEmpty(t, morning.Graph.Order())

	evening, ok := nexus.Service[cibproject.EveningRoutine](n)
	require.True(t, ok)
	assert.NotEmpty(t, evening.Graph.Order())

	names := map[string]bool{}
	for _, node := range morning.Graph.Order() {
		names[node.Name] = true
	}
	assert.True(t, names["GoToOffice"], "commute steps should participate on a work weekday")
}

func TestBuildOmitsCommuteOnANonWorkday(t *testing.T) {
	args := baseArgs()
	args.Person.WorkWeekday = false

	n, _, err := cibproject.Build(context.Background(), args, nil, false)
	require.NoError(t, err)

	morning, ok := nexus.Service[cibproject.MorningRoutine](n)
	require.True(t, ok)
	for _, node := range morning.Graph.Order() {
		assert.NotEqual(t, "GoToOffice", node.Name)
	}
}

func TestBuildOmitsNotifyCenterWhenDisabled(t *testing.T) {
	args := baseArgs()
	args.Notifications.Enabled = false

	n, _, err := cibproject.Build(context.Background(), args, nil, false)
	require.NoError(t, err)

	_, ok := nexus.Service[*cibproject.NotifyCenter](n)
	assert.False(t, ok)
}

// TestNotifyCenterDispatch exercises the three demo callbacks end to end
// through the composed project, not just internal/indexed in isolation.
func TestNotifyCenterDispatch(t *testing.T) {
	n, _, err := cibproject.Build(context.Background(), baseArgs(), nil, false)
	require.NoError(t, err)

	center, ok := nexus.Service[*cibproject.NotifyCenter](n)
	require.True(t, ok)

	assert.True(t, center.Dispatch(cibproject.Notification{Kind: cibproject.KindWeather, Priority: 0}))
	assert.True(t, center.Dispatch(cibproject.Notification{Kind: cibproject.KindCalendar, Priority: 1}))
	assert.False(t, center.Dispatch(cibproject.Notification{Kind: cibproject.KindCalendar, Priority: 0}))
}

func TestBuildBlockedByMissingPersonName(t *testing.T) {
	args := baseArgs()
	args.Person.Name = ""

	_, outcome, err := cibproject.Build(context.Background(), args, nil, false)
	require.Error(t, err)
	assert.True(t, outcome.Blocked)
	assert.NotEmpty(t, outcome.HardBlocks())
}
