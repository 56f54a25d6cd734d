package capability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPicker returns canned responses and records the titles it saw.
type scriptedPicker struct {
	path   string
	err    error
	titles []string
}

func (p *scriptedPicker) PickFolder(_ context.Context, title string) (string, error) {
	p.titles = append(p.titles, title)
	return p.path, p.err
}

func TestSelectDirectoryReturnsChosenPath(t *testing.T) {
	picker := &scriptedPicker{path: "/tmp/contracts"}
	svc := NewDialogService(picker)

	path, err := svc.SelectDirectory(context.Background(), "Select Contracts Directory")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/contracts", path)
	assert.Equal(t, []string{"Select Contracts Directory"}, picker.titles)
}

func TestSelectDirectoryCancellationIsNotAnError(t *testing.T) {
	picker := &scriptedPicker{path: ""}
	svc := NewDialogService(picker)

	path, err := svc.SelectDirectory(context.Background(), "Select Contracts Directory")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestSelectDirectorySubsystemFailureIsAnError(t *testing.T) {
	picker := &scriptedPicker{err: errors.New("no dialog backend")}
	svc := NewDialogService(picker)

	_, err := svc.SelectDirectory(context.Background(), "Select Contracts Directory")
	assert.Error(t, err)
}
