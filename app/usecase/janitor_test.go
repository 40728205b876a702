package usecase

import (
	"context"
	"log/slog"
	"testing"
	"time"

	mock_port "identity-service/app/mocks"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestJanitor_Sweep(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*mock_port.MockSessionRepository, *mock_port.MockOtpRepository)
	}{
		{
			name: "removes expired rows from both tables",
			setupMocks: func(sessions *mock_port.MockSessionRepository, otps *mock_port.MockOtpRepository) {
				sessions.EXPECT().DeleteExpired(gomock.Any(), gomock.Any()).Return(int64(2), nil)
				otps.EXPECT().DeleteExpired(gomock.Any(), gomock.Any()).Return(int64(3), nil)
			},
		},
		{
			name: "session sweep failure does not stop otp sweep",
			setupMocks: func(sessions *mock_port.MockSessionRepository, otps *mock_port.MockOtpRepository) {
				sessions.EXPECT().DeleteExpired(gomock.Any(), gomock.Any()).Return(int64(0), assert.AnError)
				otps.EXPECT().DeleteExpired(gomock.Any(), gomock.Any()).Return(int64(1), nil)
			},
		},
		{
			name: "nothing to remove",
			setupMocks: func(sessions *mock_port.MockSessionRepository, otps *mock_port.MockOtpRepository) {
				sessions.EXPECT().DeleteExpired(gomock.Any(), gomock.Any()).Return(int64(0), nil)
				otps.EXPECT().DeleteExpired(gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSessions := mock_port.NewMockSessionRepository(ctrl)
			mockOtps := mock_port.NewMockOtpRepository(ctrl)
			tt.setupMocks(mockSessions, mockOtps)

			janitor := NewJanitor(mockSessions, mockOtps, time.Minute, slog.Default())
			janitor.Sweep(context.Background())
		})
	}
}

func TestJanitor_Run_StopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSessions := mock_port.NewMockSessionRepository(ctrl)
	mockOtps := mock_port.NewMockOtpRepository(ctrl)

	janitor := NewJanitor(mockSessions, mockOtps, time.Hour, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		janitor.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after context cancellation")
	}
}
