package controllers

import (
	"os"
	"testing"

	"dma/config"
)

func TestMain(m *testing.M) {
	config.LoadConfig()
	os.Exit(m.Run())
}
