package mocks

import (
	"context"
	"io"
	"testing"
	"time"

	"orion/internal/storage"

	"github.com/stretchr/testify/mock"
)

var _ storage.Storage = (*MockStorage)(nil)

// MockStorage is a testify mock of storage.Storage. Put accepts either an ObjectInfo or a
// func computing one from the call arguments as its first return value.
type MockStorage struct {
	mock.Mock
}

// NewMockStorage returns a mock whose expectations are asserted when the test ends.
func NewMockStorage(t *testing.T) *MockStorage {
	m := &MockStorage{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockStorage) Put(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	ret := m.Called(ctx, key, r, opt)
	switch v := ret.Get(0).(type) {
	case func(context.Context, string, io.Reader, storage.PutObjectOptions) storage.ObjectInfo:
		return v(ctx, key, r, opt), ret.Error(1)
	case storage.ObjectInfo:
		return v, ret.Error(1)
	}
	return storage.ObjectInfo{}, ret.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	ret := m.Called(ctx, key, expiry)
	return ret.String(0), ret.Error(1)
}
