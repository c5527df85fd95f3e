package alert

import (
	"fmt"
	"log"
	"os"
)

// LogChannel 日志告警通道。
type LogChannel struct {
	logger *log.Logger
	name   string
}

func NewLogChannel(name string, output *os.File) *LogChannel {
	if output == nil {
		output = os.Stdout
	}
	return &LogChannel{
		logger: log.New(output, "[ALERT] ", log.LstdFlags),
		name:   name,
	}
}

func (c *LogChannel) Send(a Alert) error {
	msg := fmt.Sprintf("[%s] %s: %s", a.Level, a.Kind, a.Message)
	for k, v := range a.Fields {
		msg += fmt.Sprintf(" %s=%v", k, v)
	}
	c.logger.Println(msg)
	return nil
}

func (c *LogChannel) Name() string { return c.name }

// ConsoleChannel 控制台告警通道，按级别着色。
type ConsoleChannel struct {
	name string
}

func NewConsoleChannel(name string) *ConsoleChannel {
	return &ConsoleChannel{name: name}
}

func (c *ConsoleChannel) Send(a Alert) error {
	const reset = "\033[0m"
	color := reset
	switch a.Level {
	case "INFO":
		color = "\033[32m"
	case "WARN":
		color = "\033[33m"
	case "CRITICAL":
		color = "\033[31m"
	}
	fmt.Printf("%s[%s]%s %s %s - %s\n",
		color, a.Level, reset,
		a.Timestamp.Format("2006-01-02 15:04:05"),
		a.Kind, a.Message,
	)
	return nil
}

func (c *ConsoleChannel) Name() string { return c.name }

// MockChannel 供测试验证的通道。
type MockChannel struct {
	name      string
	alerts    []Alert
	shouldErr bool
}

func NewMockChannel(name string) *MockChannel {
	return &MockChannel{name: name}
}

func (c *MockChannel) Send(a Alert) error {
	if c.shouldErr {
		return fmt.Errorf("mock error")
	}
	c.alerts = append(c.alerts, a)
	return nil
}

func (c *MockChannel) Name() string { return c.name }

func (c *MockChannel) Alerts() []Alert { return c.alerts }

func (c *MockChannel) Count() int { return len(c.alerts) }

func (c *MockChannel) SetShouldError(b bool) { c.shouldErr = b }
