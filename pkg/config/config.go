// Copyright 2026 Abir4testing
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置结构体
type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Secrets    SecretsConfig    `mapstructure:"secrets"`
	Log        LogConfig        `mapstructure:"log"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

// APIConfig API 服务配置
type APIConfig struct {
	Port       int              `mapstructure:"port"`
	Middleware MiddlewareConfig `mapstructure:"middleware"`
}

// MiddlewareConfig HTTP 中间件配置
type MiddlewareConfig struct {
	CORS          bool            `mapstructure:"cors"`
	Auth          bool            `mapstructure:"auth"`        // true 时为 /api/system 启用 JWT
	JWTKey        string          `mapstructure:"jwt_key"`     // auth=true 时必填
	JWTTimeout    string          `mapstructure:"jwt_timeout"` // 如 "1h"
	JWTMaxRefresh string          `mapstructure:"jwt_max_refresh"`
	RateLimit     RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig 口令相关端点的限速配置（令牌桶）
type RateLimitConfig struct {
	Enable bool    `mapstructure:"enable"`
	QPS    float64 `mapstructure:"qps"`
	Burst  int     `mapstructure:"burst"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	Metadata MetadataConfig `mapstructure:"metadata"`
	Object   ObjectConfig   `mapstructure:"object"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// MetadataConfig 元数据存储配置
type MetadataConfig struct {
	Type      string `mapstructure:"type"`       // memory | postgres
	DSN       string `mapstructure:"dsn"`        // Postgres 连接串，type=postgres 时必填
	DSNSecret string `mapstructure:"dsn_secret"` // 非空时从 secret store 取 DSN，覆盖 dsn
	Migrate   bool   `mapstructure:"migrate"`    // true 时启动前执行 goose 迁移
}

// ObjectConfig 对象（blob）存储配置
type ObjectConfig struct {
	Type string `mapstructure:"type"` // memory | filesystem
	Root string `mapstructure:"root"` // filesystem 时的根目录，如 "uploads"
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Type     string `mapstructure:"type"`     // memory | redis | none
	Addr     string `mapstructure:"addr"`     // redis 地址
	Password string `mapstructure:"password"` // redis 口令，支持 ${VAR}
	DB       int    `mapstructure:"db"`
	TTL      string `mapstructure:"ttl"` // 搜索投影缓存时长，如 "30s"
}

// SecretsConfig Secret Store 配置
type SecretsConfig struct {
	Provider string            `mapstructure:"provider"` // vault | env | memory
	Config   map[string]string `mapstructure:"config"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// MonitoringConfig 监控配置
type MonitoringConfig struct {
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

// PrometheusConfig Prometheus 配置
type PrometheusConfig struct {
	Enable bool `mapstructure:"enable"`
}

// TracingConfig 链路追踪配置（OpenTelemetry）
type TracingConfig struct {
	Enable         bool   `mapstructure:"enable"`
	ServiceName    string `mapstructure:"service_name"`
	ExportEndpoint string `mapstructure:"export_endpoint"`
	Insecure       bool   `mapstructure:"insecure"`
}

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("无法读取配置文件: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("无法解析配置文件: %w", err)
	}

	// 替换环境变量
	replaceEnvVars(&config)

	return &config, nil
}

// replaceEnvVars 替换配置中 ${VAR} 形式的敏感项
func replaceEnvVars(config *Config) {
	config.Storage.Metadata.DSN = expandEnv(config.Storage.Metadata.DSN)
	config.Storage.Cache.Password = expandEnv(config.Storage.Cache.Password)
	config.API.Middleware.JWTKey = expandEnv(config.API.Middleware.JWTKey)
}

// expandEnv 将 ${VAR} 替换为环境变量值；非该形式或变量未设置时原样返回
func expandEnv(s string) string {
	if strings.HasPrefix(s, "$") {
		envVar := strings.TrimPrefix(strings.TrimSuffix(s, "}"), "${")
		if val := os.Getenv(envVar); val != "" {
			return val
		}
	}
	return s
}

// LoadAPIConfig 加载 API 配置（configs/api.yaml）
func LoadAPIConfig() (*Config, error) {
	path := os.Getenv("PDFSHARE_CONFIG")
	if path == "" {
		path = "configs/api.yaml"
	}
	return LoadConfig(path)
}
