package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mindmend/internal/client"
	"github.com/mindmend/internal/ui"
	"github.com/spf13/cobra"
)

var (
	serverURL string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "mindmend",
	Short: "MindMend 终端客户端",
	Long:  "MindMend 终端客户端：记录心情、书写日记、回顾历史。",
	RunE: func(cmd *cobra.Command, args []string) error {
		api := client.New(serverURL, timeout)
		return ui.Run(api)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&serverURL, "server", "s", "http://localhost:3000", "MindMend 服务端地址")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "单次请求超时")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
