package server

import "devops/info/internal/sysinfo"

type ServiceInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Framework   string `json:"framework"`
}

type RuntimeInfo struct {
	UptimeSeconds int64  `json:"uptime_seconds"`
	UptimeHuman   string `json:"uptime_human"`
	CurrentTime   string `json:"current_time"`
	Timezone      string `json:"timezone"`
}

// RequestInfo echoes what the server saw of the caller. UserAgent is nil
// when the header was not sent at all.
type RequestInfo struct {
	ClientIP  string  `json:"client_ip"`
	UserAgent *string `json:"user_agent"`
	Method    string  `json:"method"`
	Path      string  `json:"path"`
}

type EndpointResponse struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

type InfoResponse struct {
	Service   ServiceInfo        `json:"service"`
	System    sysinfo.System     `json:"system"`
	Runtime   RuntimeInfo        `json:"runtime"`
	Request   RequestInfo        `json:"request"`
	Endpoints []EndpointResponse `json:"endpoints"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}
