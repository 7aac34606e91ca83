package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m, err := New([]byte("connection: bench:secret@tcp(127.0.0.1:3306)/sampledata\n"))
	require.NoError(t, err)

	configs := m.GetConfigs()
	assert.Equal(t, "mysql", configs["engine"])
	assert.Equal(t, "127.0.0.1:3306", configs["addr"])
	assert.Equal(t, "sampledata", configs["database"])
}

func TestNewInvalidConnection(t *testing.T) {
	_, err := New([]byte("connection: not a dsn\n"))
	assert.Error(t, err)
}

func TestOpenUnreachable(t *testing.T) {
	// nothing listens on port 1
	m, err := New([]byte("connection: bench:secret@tcp(127.0.0.1:1)/sampledata?timeout=1s\n"))
	require.NoError(t, err)

	_, err = m.Open()
	assert.Error(t, err)
}
