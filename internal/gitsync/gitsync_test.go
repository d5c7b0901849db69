// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gitsync

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSyncNonRepo(t *testing.T) {
	var out bytes.Buffer
	err := Sync(t.TempDir(), time.Now(), &out)
	assert.ErrorIs(t, err, ErrNotARepo)
}
