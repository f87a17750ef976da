package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/refgraph/internal/core/domain"
)

func TestTimestamp_After(t *testing.T) {
	older := domain.At(time.Unix(1_000, 0))
	newer := domain.At(time.Unix(2_000, 0))
	missing := domain.Infinite()

	assert.True(t, newer.After(older))
	assert.False(t, older.After(newer))
	assert.False(t, older.After(older))

	assert.True(t, missing.After(newer), "a missing file is newer than any existing file")
	assert.False(t, newer.After(missing))
	assert.False(t, missing.After(missing))
	assert.True(t, missing.IsInfinite())
}

func TestFramework_FolderKeyPath(t *testing.T) {
	fw := domain.Framework{
		Roots: map[domain.RootScope]string{
			domain.ScopeMachine: "/etc/folders",
			domain.ScopeUser:    "/home/me/folders",
		},
	}

	p, ok := fw.FolderKeyPath("user:Vendor/Widgets")
	assert.True(t, ok)
	assert.Equal(t, "/home/me/folders/Vendor/Widgets", p)

	p, ok = fw.FolderKeyPath("Vendor")
	assert.True(t, ok)
	assert.Equal(t, "/etc/folders/Vendor", p)

	_, ok = fw.FolderKeyPath("network:Vendor")
	assert.False(t, ok)

	_, ok = fw.FolderKeyPath("")
	assert.False(t, ok)
}
