/**
 *
 * 利用数组实现双端队列，容量固定
 * 用于保存最近的采样点，队列满后从头部淘汰最旧的元素
 *
 */

package deque

import "thermotube/model"

type Deque interface {
	// 队列的长度
	Size() int

	// 获取队列中对应下标的元素，0 为队头
	Get(i int) model.Sample

	// 正向遍历
	Traverse(f func(i int, item model.Sample))

	// 复制出所有元素
	Slice() []model.Sample

	// 在队列结尾增加一个元素
	AddLast(item model.Sample)

	// 在队列结尾删除一个元素
	RemoveLast() model.Sample

	// 在队列头部增加一个元素
	AddFirst(item model.Sample)

	// 在队列头部删除一个元素
	RemoveFirst() model.Sample

	Clear()

	IsFull() bool

	IsEmpty() bool
}
