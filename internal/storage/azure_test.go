package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAzureStorage_RequiresNames(t *testing.T) {
	tests := []struct {
		name      string
		account   string
		container string
		wantErr   string
	}{
		{name: "missing account", account: "", container: "visibi", wantErr: "storage account name is required"},
		{name: "missing container", account: "visibidata", container: "", wantErr: "storage container name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewAzureStorage(tt.account, tt.container)
			assert.Nil(t, store)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
