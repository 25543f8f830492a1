package eventservice

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/gourab8389/blog-author/internal/common"
)

type MockMessageProducer struct {
	mock.Mock
}

func (m *MockMessageProducer) IsReady() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockMessageProducer) Publish(ctx context.Context, queue common.Queue, body []byte) error {
	args := m.Called(ctx, queue, body)
	return args.Error(0)
}

// RecordingProducer captures published messages for assertions without the
// ceremony of expectation setup.
type RecordingProducer struct {
	mu       sync.Mutex
	Ready    bool
	Messages map[common.Queue][][]byte
}

func NewRecordingProducer() *RecordingProducer {
	return &RecordingProducer{Ready: true, Messages: make(map[common.Queue][][]byte)}
}

func (p *RecordingProducer) IsReady() bool {
	return p.Ready
}

func (p *RecordingProducer) Publish(ctx context.Context, queue common.Queue, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Messages[queue] = append(p.Messages[queue], body)
	return nil
}

func (p *RecordingProducer) Published(queue common.Queue) [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.Messages[queue]
}
