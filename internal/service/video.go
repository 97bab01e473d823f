// File: internal/service/video.go
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrVideoDisabled 視訊服務憑證未設定
var ErrVideoDisabled = errors.New("video service is not configured")

// VideoConfig 視訊房間服務的 app 憑證
type VideoConfig struct {
	AccessKey string
	Secret    string
}

// RoomTokens 一次諮詢所需的房間與雙方入房 token
type RoomTokens struct {
	RoomID       string
	DoctorToken  string
	PatientToken string
}

// Video 為諮詢建立房間並簽發入房 token。
// token 依供應商的 app token 格式以 HS256 簽發。
type Video struct {
	cfg VideoConfig
}

// NewVideo 以設定建立 Video
func NewVideo(cfg VideoConfig) *Video {
	return &Video{cfg: cfg}
}

// Enabled 回報憑證是否已設定
func (v *Video) Enabled() bool {
	return v.cfg.AccessKey != "" && v.cfg.Secret != ""
}

var uuidNewString = uuid.NewString

// CreateRoomAndTokens 建立房間 ID 並為醫師與病患各簽發一枚入房 token
func (v *Video) CreateRoomAndTokens(patientName, doctorName string) (*RoomTokens, error) {
	if !v.Enabled() {
		return nil, ErrVideoDisabled
	}

	roomID := "room-" + uuidNewString()

	doctorToken, err := v.peerToken(roomID, doctorName, "doctor")
	if err != nil {
		return nil, err
	}
	patientToken, err := v.peerToken(roomID, patientName, "patient")
	if err != nil {
		return nil, err
	}

	return &RoomTokens{
		RoomID:       roomID,
		DoctorToken:  doctorToken,
		PatientToken: patientToken,
	}, nil
}

func (v *Video) peerToken(roomID, userID, role string) (string, error) {
	now := timeNow()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"access_key": v.cfg.AccessKey,
		"room_id":    roomID,
		"user_id":    userID,
		"role":       role,
		"type":       "app",
		"version":    2,
		"jti":        uuidNewString(),
		"iat":        now.Unix(),
		"exp":        now.Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(v.cfg.Secret))
}
