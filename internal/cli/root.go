// Package cli は clubd コマンドを組み立てる
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-club-seat-reservation/internal/config"
	"github.com/sanosuguru/go-club-seat-reservation/internal/pkg/logger"
)

// NewRoot はサブコマンドを登録したルートコマンドを返す
//
// 各サブコマンドの実行前に .env（あれば）を読み込み、環境変数から設定を作る。
func NewRoot() *cobra.Command {
	var envFile string
	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:           "clubd",
		Short:         "Computer club seat reservation server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(envFile); err != nil {
				// .env がなければ環境変数のみで動かす
				logger.Debug("envファイルを読み込まずに起動", zap.String("path", envFile), zap.Error(err))
			}
			*cfg = *config.Load()
			logger.Set(logger.NewLogger(cfg.Env))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to a dotenv file")

	cmd.AddCommand(newServeCmd(cfg))
	cmd.AddCommand(newMigrateCmd(cfg))
	cmd.AddCommand(newSeatsCmd(cfg))
	return cmd
}

// Execute はルートコマンドを実行する
func Execute() error {
	return NewRoot().Execute()
}
