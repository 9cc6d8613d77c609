package httpclient

import (
	"net/http"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/hystrix"
)

// ConnectionPoolConfig controls the transport shared by a backend client.
// Timeout is in milliseconds, IdleConnTimeout in seconds.
type ConnectionPoolConfig struct {
	MaxIdleConns        int `mapstructure:"maxIdleConns"`
	MaxIdleConnsPerHost int `mapstructure:"maxIdleConnsPerHost"`
	IdleConnTimeout     int `mapstructure:"idleConnTimeout"`
	Timeout             int `mapstructure:"timeout"`
}

// HystrixResiliencyConfig controls the circuit breaker wrapped around a
// backend client. Timeout and SleepWindow are in milliseconds.
type HystrixResiliencyConfig struct {
	Timeout                int `mapstructure:"timeout"`
	MaxConcurrentRequests  int `mapstructure:"maxConcurrentRequests"`
	ErrorPercentThreshold  int `mapstructure:"errorPercentThreshold"`
	RequestVolumeThreshold int `mapstructure:"requestVolumeThreshold"`
	SleepWindow            int `mapstructure:"sleepWindow"`
}

// InitializeClient builds a heimdall hystrix client for the named backend
// with a pooled transport, circuit breaker and optional retrier/fallback.
func InitializeClient(
	commandName string,
	poolCfg ConnectionPoolConfig,
	hystrixCfg HystrixResiliencyConfig,
	retrier heimdall.Retriable,
	retryCount int,
	fallbackFn func(error) error,
) (*hystrix.Client, error) {
	httpClient := &http.Client{
		Timeout: time.Duration(poolCfg.Timeout) * time.Millisecond,
		Transport: &http.Transport{
			MaxIdleConns:        poolCfg.MaxIdleConns,
			MaxIdleConnsPerHost: poolCfg.MaxIdleConnsPerHost,
			IdleConnTimeout:     time.Duration(poolCfg.IdleConnTimeout) * time.Second,
		},
	}

	options := []hystrix.Option{
		hystrix.WithHTTPClient(httpClient),
		hystrix.WithCommandName(commandName),
		hystrix.WithHTTPTimeout(time.Duration(poolCfg.Timeout) * time.Millisecond),
		hystrix.WithHystrixTimeout(time.Duration(hystrixCfg.Timeout) * time.Millisecond),
		hystrix.WithMaxConcurrentRequests(hystrixCfg.MaxConcurrentRequests),
		hystrix.WithErrorPercentThreshold(hystrixCfg.ErrorPercentThreshold),
		hystrix.WithRequestVolumeThreshold(hystrixCfg.RequestVolumeThreshold),
		hystrix.WithSleepWindow(hystrixCfg.SleepWindow),
	}

	if retrier != nil {
		options = append(options,
			hystrix.WithRetrier(retrier),
			hystrix.WithRetryCount(retryCount),
		)
	}

	if fallbackFn != nil {
		options = append(options, hystrix.WithFallbackFunc(fallbackFn))
	}

	return hystrix.NewClient(options...), nil
}
