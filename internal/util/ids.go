// Generator ID sederhana untuk request id

package util

import (
	"github.com/google/uuid"
)

func NewID() string {
	return uuid.New().String()
}
