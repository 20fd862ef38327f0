package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kantarabench/internal/report"
	"kantarabench/internal/target"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local target: hello-world server plus reverse proxy",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := target.DefaultConfig()
		cfg.WebPort, _ = cmd.Flags().GetInt("web-port")
		cfg.ProxyPort, _ = cmd.Flags().GetInt("proxy-port")
		cfg.Upstream, _ = cmd.Flags().GetString("upstream")
		noAuto, _ := cmd.Flags().GetBool("no-auto-port")
		cfg.AutoPort = !noAuto

		web, proxy, err := target.Start(cfg)
		if err != nil {
			report.PrintFatal(err)
			os.Exit(1)
		}

		fmt.Println("\n✓ Kantara target is running!")
		fmt.Printf("  - Web server:    http://localhost:%d\n", web.Port)
		fmt.Printf("  - Reverse proxy: http://localhost:%d\n", proxy.Port)
		fmt.Println("  - Press Ctrl+C to stop")
		fmt.Println()

		select {}
	},
}

func init() {
	def := target.DefaultConfig()
	serveCmd.Flags().Int("web-port", def.WebPort, "Port for the web server")
	serveCmd.Flags().Int("proxy-port", def.ProxyPort, "Port for the reverse proxy")
	serveCmd.Flags().String("upstream", def.Upstream, "Upstream URL the proxy forwards to")
	serveCmd.Flags().Bool("no-auto-port", false, "Fail instead of scanning for a free port")
}
