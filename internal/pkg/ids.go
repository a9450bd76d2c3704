package pkg

import (
	"crypto/rand"
	"crypto/sha1" //nolint: gosec // mandated by the WebSocket handshake (RFC 6455)
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
)

// websocketGUID is the fixed GUID from RFC 6455 used to build the accept key.
const websocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

const gameIDDigits = 6

// GenerateAcceptKey - derives the Sec-WebSocket-Accept value for a handshake key.
func GenerateAcceptKey(key string) string {
	hash := sha1.Sum([]byte(key + websocketGUID)) //nolint: gosec // see import note
	return base64.StdEncoding.EncodeToString(hash[:])
}

// GenerateNewSessionID - returns a random hex session identifier.
func GenerateNewSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Errorf("failed to read random bytes: %w", err))
	}

	return hex.EncodeToString(buf)
}

// GenerateGameID - returns a short numeric game identifier.
func GenerateGameID() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < gameIDDigits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate game id: %w", err)
	}

	return fmt.Sprintf("%0*d", gameIDDigits, n), nil
}
