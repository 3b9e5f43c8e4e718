package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerRecordValidate(t *testing.T) {
	valid := DefaultRecords()[0]

	tests := []struct {
		name    string
		mutate  func(r *ServerRecord)
		wantErr bool
	}{
		{name: "valid record", mutate: func(r *ServerRecord) {}},
		{name: "zero capacity allowed", mutate: func(r *ServerRecord) { r.MaxPlayers = 0; r.Players = 0 }},
		{name: "players above capacity allowed", mutate: func(r *ServerRecord) { r.Players = r.MaxPlayers + 1 }},
		{name: "missing id", mutate: func(r *ServerRecord) { r.ID = 0 }, wantErr: true},
		{name: "missing name", mutate: func(r *ServerRecord) { r.Name = "" }, wantErr: true},
		{name: "missing address", mutate: func(r *ServerRecord) { r.Address = "" }, wantErr: true},
		{name: "unknown status", mutate: func(r *ServerRecord) { r.Status = "maintenance" }, wantErr: true},
		{name: "negative players", mutate: func(r *ServerRecord) { r.Players = -1 }, wantErr: true},
		{name: "negative capacity", mutate: func(r *ServerRecord) { r.MaxPlayers = -5 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidRecord))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRecordsDuplicateID(t *testing.T) {
	records := DefaultRecords()
	require.NoError(t, ValidateRecords(records))

	records[1].ID = records[0].ID
	err := ValidateRecords(records)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRecord))
	assert.Contains(t, err.Error(), "duplicate server id 1")
}

func TestHubConfigRecords(t *testing.T) {
	var cfg HubConfig
	assert.Equal(t, DefaultRecords(), cfg.Records())

	cfg.Servers = []ServerRecord{{ID: 9, Name: "LOBBY", Address: "lobby.server.net", Status: StatusOnline, MaxPlayers: 10}}
	got := cfg.Records()
	require.Len(t, got, 1)
	got[0].Name = "changed"
	assert.Equal(t, "LOBBY", cfg.Servers[0].Name)
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusOnline.Valid())
	assert.True(t, StatusOffline.Valid())
	assert.False(t, Status("").Valid())
}
