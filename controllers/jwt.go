package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"os"
	"strconv"

	"github.com/Brighttier/Chatbot-Peptides-sub001/config"
)

var securityCfg = config.SecurityConfiguration{TokenMaxValidHrs: 72}

// SetSecurityConfiguration injects the security section once at boot.
func SetSecurityConfiguration(cfg config.SecurityConfiguration) {
	securityCfg = cfg
}

func getJWTSecret() string {
	if secret := getenv("JWT_SECRET", ""); secret != "" {
		return secret
	}
	if securityCfg.JwtSecret != "" {
		return securityCfg.JwtSecret
	}
	return "CHANGE_ME"
}

func tokenMaxValidHours() int {
	if n := getenvInt("TOKEN_MAX_VALID_HOURS", 0); n > 0 {
		return n
	}
	if securityCfg.TokenMaxValidHrs > 0 {
		return securityCfg.TokenMaxValidHrs
	}
	return 72
}

func signHS256JWT(secret string, claims map[string]any) (string, error) {
	// Header
	header := map[string]any{"alg": "HS256", "typ": "JWT"}
	headB, err := json.Marshal(header)
	if err != nil {
		return "", err
	}
	// Payload
	payloadB, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	enc := base64.RawURLEncoding
	unsigned := enc.EncodeToString(headB) + "." + enc.EncodeToString(payloadB)

	h := hmac.New(sha256.New, []byte(secret))
	_, _ = h.Write([]byte(unsigned))
	sig := enc.EncodeToString(h.Sum(nil))
	return unsigned + "." + sig, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	s := getenv(k, "")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
