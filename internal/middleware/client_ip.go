package middleware

import (
	"net"
	"net/http"
	"strings"
)

// clientIPHeaders en orden de preferencia (CDN primero, después proxies comunes).
var clientIPHeaders = []string{
	"CF-Connecting-IP",
	"True-Client-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// ClientIP resuelve la IP del cliente detrás de CDN / reverse proxy.
// Gana el primer header no vacío; de X-Forwarded-For se toma la primera entrada.
// Si no hay headers se usa RemoteAddr sin el puerto.
// Los headers no se validan: quien esté delante tiene que pisarlos.
func ClientIP(r *http.Request) string {
	for _, h := range clientIPHeaders {
		v := strings.TrimSpace(r.Header.Get(h))
		if v == "" {
			continue
		}
		if h == "X-Forwarded-For" {
			first, _, _ := strings.Cut(v, ",")
			v = strings.TrimSpace(first)
			if v == "" {
				continue
			}
		}
		return v
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
