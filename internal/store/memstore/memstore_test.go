package memstore

import (
	"testing"

	"github.com/Makepad-fr/tada/internal/store/storetest"
)

func TestMemstore(t *testing.T) {
	storetest.Run(t, New())
}
