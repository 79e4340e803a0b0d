package common_test

import (
	"testing"
	"time"

	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/hamlet"
)

func TestCanUseStopwatch(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	sut := common.Stopwatch("hello")
	wont_be.Nil(sut)
	limit := common.Duration(10 * time.Millisecond)
	must_be.True(sut.Elapsed() < limit)
}

func TestCanUseIdentityHash(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	first := common.IdentityHash([]byte("torqsecure/widget@main#1"))
	again := common.IdentityHash([]byte("torqsecure/widget@main#1"))
	other := common.IdentityHash([]byte("torqsecure/widget@main#2"))

	must_be.Equal(first, again)
	wont_be.Equal(first, other)
	must_be.Equal(16, len(first))
}
