// CLIApplication 面向命令行应用（组合 BaseApplication）
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// CLIApplication CLI 应用（BaseApplication + Cobra 命令）
type CLIApplication struct {
	*BaseApplication

	rootCmd *cobra.Command
}

// NewCLI 创建 CLI 应用实例
// configPath: 主配置文件路径（可为空）
// envPrefix: 环境变量前缀（空则默认 "LUBAN"）
// rootCmd: Cobra 根命令
func NewCLI(configPath, envPrefix string, rootCmd *cobra.Command) *CLIApplication {
	if envPrefix == "" {
		envPrefix = "LUBAN"
	}

	app := &CLIApplication{
		BaseApplication: NewBase(configPath, envPrefix),
		rootCmd:         rootCmd,
	}

	// 内置模块巡检命令
	rootCmd.AddCommand(app.newModulesCommand())
	return app
}

// OnSetup 注册 Setup 阶段回调（链式调用）
func (c *CLIApplication) OnSetup(fn func(*CLIApplication) error) *CLIApplication {
	c.BaseApplication.OnSetup(func(base *BaseApplication) error {
		return fn(c)
	})
	return c
}

// OnReady 注册启动完成回调（链式调用）
func (c *CLIApplication) OnReady(fn func(*CLIApplication) error) *CLIApplication {
	c.BaseApplication.OnReady(func(base *BaseApplication) error {
		return fn(c)
	})
	return c
}

// OnShutdown 注册关闭回调（链式调用）
func (c *CLIApplication) OnShutdown(fn func(*CLIApplication) error) *CLIApplication {
	c.BaseApplication.OnShutdown(func(ctx context.Context) error {
		return fn(c)
	})
	return c
}

// Execute 执行 CLI 命令（同步执行，结束后关停）
func (c *CLIApplication) Execute() error {
	// 1. 启动流程（模块发现 + 初始化）
	if err := c.Bootstrap(); err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	logger := c.MustGetLogger()
	logger.DebugCtx(c.ctx, "✅ CLI application initialized")

	// 2. 执行 Cobra 命令（同步）
	err := c.rootCmd.Execute()

	// 3. 无论成败都走优雅关停（CLI 通常很快结束，5 秒超时足够）
	shutdownErr := c.BaseApplication.Shutdown(5 * time.Second)

	if err != nil {
		return err
	}
	return shutdownErr
}

// GetRootCmd 获取根命令（用于测试）
func (c *CLIApplication) GetRootCmd() *cobra.Command {
	return c.rootCmd
}

// AddCommand 添加子命令（便捷方法）
func (c *CLIApplication) AddCommand(cmds ...*cobra.Command) *CLIApplication {
	c.rootCmd.AddCommand(cmds...)
	return c
}

// newModulesCommand 列出已注册模块及其状态
func (c *CLIApplication) newModulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List registered modules and their states",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := c.modules.ModuleNames()
			if len(names) == 0 {
				cmd.Println("no modules registered")
				return nil
			}
			for _, name := range names {
				mod, ok := c.modules.GetModule(name)
				if !ok {
					continue
				}
				state, _ := c.modules.ModuleState(name)
				cmd.Printf("%-24s %-10s %-10s %s\n", name, mod.Version(), state.String(), mod.Description())
				c.logger.Debug("module listed", zap.String("module", name), zap.String("state", state.String()))
			}
			return nil
		},
	}
}
