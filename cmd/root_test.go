package cmd

import "testing"

func TestPersistentPreRunBuildsHTTPConfig(t *testing.T) {
	t.Run("HighThreadMode", func(t *testing.T) {
		connections = 8
		userAgent = ""
		proxyURL = ""
		rootCmd.PersistentPreRun(rootCmd, nil)
		if !globalHTTPConfig.HighThreadMode {
			t.Error("HighThreadMode should be enabled for 8 connections")
		}
	})

	t.Run("LowConnections", func(t *testing.T) {
		connections = 4
		rootCmd.PersistentPreRun(rootCmd, nil)
		if globalHTTPConfig.HighThreadMode {
			t.Error("HighThreadMode should be disabled for 4 connections")
		}
	})

	t.Run("ConnectionsFlagRegistered", func(t *testing.T) {
		if rootCmd.PersistentFlags().Lookup("connections") == nil {
			t.Error("connections flag not registered")
		}
	})
}
