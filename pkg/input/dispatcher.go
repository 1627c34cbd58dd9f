package input

import "slices"

// Dispatcher 输入事件分发器
//
// 订阅者可以在回调中订阅或退订（例如开始手势处理完后立即退订），
// 本次分发使用分发开始时的订阅者快照。
type Dispatcher struct {
	touchListeners   []TouchListener
	triggerListeners []TriggerListener
}

// NewDispatcher 创建分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// SubscribeTouch 订阅触摸事件；重复订阅被忽略
func (d *Dispatcher) SubscribeTouch(listener TouchListener) {
	if slices.Contains(d.touchListeners, listener) {
		return
	}
	d.touchListeners = append(d.touchListeners, listener)
}

// UnsubscribeTouch 退订触摸事件
func (d *Dispatcher) UnsubscribeTouch(listener TouchListener) {
	if i := slices.Index(d.touchListeners, listener); i >= 0 {
		d.touchListeners = slices.Delete(d.touchListeners, i, i+1)
	}
}

// SubscribeTrigger 订阅开始手势；重复订阅被忽略
func (d *Dispatcher) SubscribeTrigger(listener TriggerListener) {
	if slices.Contains(d.triggerListeners, listener) {
		return
	}
	d.triggerListeners = append(d.triggerListeners, listener)
}

// UnsubscribeTrigger 退订开始手势
func (d *Dispatcher) UnsubscribeTrigger(listener TriggerListener) {
	if i := slices.Index(d.triggerListeners, listener); i >= 0 {
		d.triggerListeners = slices.Delete(d.triggerListeners, i, i+1)
	}
}

// TouchSubscribers 当前触摸订阅者数量
func (d *Dispatcher) TouchSubscribers() int {
	return len(d.touchListeners)
}

// TriggerSubscribers 当前开始手势订阅者数量
func (d *Dispatcher) TriggerSubscribers() int {
	return len(d.triggerListeners)
}

// DispatchTouch 把触摸事件发送给所有订阅者
func (d *Dispatcher) DispatchTouch(event TouchEvent) {
	for _, l := range slices.Clone(d.touchListeners) {
		l.OnTouch(event)
	}
}

// DispatchTrigger 把开始手势发送给所有订阅者
func (d *Dispatcher) DispatchTrigger() {
	for _, l := range slices.Clone(d.triggerListeners) {
		l.OnTrigger()
	}
}
