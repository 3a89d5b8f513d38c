package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

// ceremonyTTL bounds how long an issued ceremony stays answerable.
const ceremonyTTL = 5 * time.Minute

// IRedisService holds transient WebAuthn ceremony state. Registration
// sessions are keyed by user (the route is authenticated); authentication
// sessions are keyed by the issued challenge. Both are single-use: the
// ceremony deletes them on completion, success or not.
type IRedisService interface {
	StoreRegistrationSession(userID uint, sessionData *webauthn.SessionData) error
	GetRegistrationSession(userID uint) (*webauthn.SessionData, error)
	DeleteRegistrationSession(userID uint) error
	StoreAuthenticationSession(challenge string, sessionData *webauthn.SessionData) error
	GetAuthenticationSession(challenge string) (*webauthn.SessionData, error)
	DeleteAuthenticationSession(challenge string) error
}

type RedisService struct {
	rdb *redis.Client
}

func NewRedisService(rdb *redis.Client) *RedisService {
	return &RedisService{rdb: rdb}
}

func (s *RedisService) StoreRegistrationSession(userID uint, sessionData *webauthn.SessionData) error {
	data, err := json.Marshal(sessionData)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, fmt.Sprintf("webauthn:reg:%d", userID), data, ceremonyTTL).Err()
}

func (s *RedisService) GetRegistrationSession(userID uint) (*webauthn.SessionData, error) {
	val, err := s.rdb.Get(ctx, fmt.Sprintf("webauthn:reg:%d", userID)).Result()
	if err != nil {
		return nil, err
	}

	var sessionData webauthn.SessionData
	if err := json.Unmarshal([]byte(val), &sessionData); err != nil {
		return nil, err
	}
	return &sessionData, nil
}

func (s *RedisService) DeleteRegistrationSession(userID uint) error {
	return s.rdb.Del(ctx, fmt.Sprintf("webauthn:reg:%d", userID)).Err()
}

func (s *RedisService) StoreAuthenticationSession(challenge string, sessionData *webauthn.SessionData) error {
	data, err := json.Marshal(sessionData)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, fmt.Sprintf("webauthn:auth:%s", challenge), data, ceremonyTTL).Err()
}

func (s *RedisService) GetAuthenticationSession(challenge string) (*webauthn.SessionData, error) {
	val, err := s.rdb.Get(ctx, fmt.Sprintf("webauthn:auth:%s", challenge)).Result()
	if err != nil {
		return nil, err
	}

	var sessionData webauthn.SessionData
	if err := json.Unmarshal([]byte(val), &sessionData); err != nil {
		return nil, err
	}
	return &sessionData, nil
}

func (s *RedisService) DeleteAuthenticationSession(challenge string) error {
	return s.rdb.Del(ctx, fmt.Sprintf("webauthn:auth:%s", challenge)).Err()
}
