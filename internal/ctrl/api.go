//go:generate mockgen -destination=./mock/mock_api.go -package=mock_ctrl . Transport,Authenticator,Clock

package ctrl

import (
	"context"
	"time"

	"github.com/tjjh89017/graylog-manage-go/internal/entity"
	"github.com/tjjh89017/graylog-manage-go/internal/graylog"
)

type Transport interface {
	URL(path string) string
	Do(ctx context.Context, request *graylog.Request) (*graylog.Response, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context) (entity.Token, error)
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now()
}
