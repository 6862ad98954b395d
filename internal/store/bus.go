package store

import "sync"

// busBuffer 订阅通道缓冲，写满即丢（与 SSE 广播一致：慢消费者不阻塞写入方）
const busBuffer = 32

// Bus 进程内变更事件总线。后端每次写入成功后 Publish，
// 所有挂接的 Store（以及 SSE 推送端）收到同一事件流。
type Bus struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Attach 挂接一个订阅者，返回事件通道和解除函数
func (b *Bus) Attach() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, busBuffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish 向所有订阅者广播，通道满时跳过该订阅者
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
