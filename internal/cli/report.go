package cli

import (
	"fmt"
	"io"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm/define"
)

// reporter 把引擎回调打印成逐时隙报表
type reporter struct {
	out       io.Writer
	decisions bool // 是否打印卸载决策
}

func (r *reporter) OnSlot(snap define.SlotSnapshot) {
	fmt.Fprintf(r.out, "slot %d:\n", snap.Slot)
	for _, n := range snap.Nodes {
		fmt.Fprintf(r.out, "\t%s\n", nodeLine(n))
	}
}

func (r *reporter) OnDecision(d define.Decision) {
	if r.decisions {
		fmt.Fprintf(r.out, "\tUAV_%d --> UAV_%d\n", d.From, d.Target)
	}
}

func (r *reporter) OnDrop(ev define.DropEvent) {
	kind := "计算"
	if ev.Queue == define.QueueTx {
		kind = "传输"
	}
	if ev.Reason == define.DropNoTarget {
		fmt.Fprintf(r.out, "UAV-%d 没有可卸载的邻居，丢弃 %d 个任务(来源%d)\n", ev.NodeID, ev.Dropped, ev.Origin)
		return
	}
	fmt.Fprintf(r.out, "UAV-%d 的%s队列已满，丢弃 %d 个任务(来源%d)\n", ev.NodeID, kind, ev.Dropped, ev.Origin)
}

func doneAt(slot *int) int {
	if slot == nil {
		return define.NotCompleted
	}
	return *slot
}

func nodeLine(n define.NodeSnapshot) string {
	return fmt.Sprintf("UAV_%d: local: (%d, %d), Q: (%d/%d, %d/%d), init=%d, remain=%d, done_at=%d",
		n.ID, n.LocalTx, n.LocalCp, n.TxLen, n.TxCapacity, n.CpLen, n.CpCapacity,
		n.InitialTasks, n.RemainingOwnTasks, doneAt(n.CompletionSlot))
}

// printInitial 打印初始化后的占用情况
func printInitial(out io.Writer, state define.SlotSnapshot, uavs []*define.UAV) {
	fmt.Fprintln(out, "=== 初始 UAV 队列占用（数量/容量）===")
	for i, n := range state.Nodes {
		u := uavs[i]
		fmt.Fprintf(out, "%s, rate: (%d, %d), neighbors: %v\n", nodeLine(n), u.TxRate, u.CpRate, u.Neighbors)
	}
}

// printSummary 打印结束状态与每个节点的完成时隙
func printSummary(out io.Writer, result *define.Result) {
	switch result.Status {
	case define.RunBudgetExhausted:
		fmt.Fprintf(out, "达到最大时隙数 %d，提前结束。\n", result.MaxSlots)
	case define.RunCanceled:
		fmt.Fprintln(out, "仿真被取消。")
	}
	fmt.Fprintf(out, "=== 结束：总时隙 = %d ===\n\n", result.Slots)
	fmt.Fprintln(out, "完成时间汇总(按 UAV id):")
	for _, n := range result.Nodes {
		fmt.Fprintf(out, "  UAV_%d: 初始%d个, 完成时隙 = %d\n", n.ID, n.InitialTasks, doneAt(n.CompletionSlot))
	}
	if result.DroppedTasks > 0 {
		fmt.Fprintf(out, "丢弃任务数：%d\n", result.DroppedTasks)
	}
	if result.Completed() {
		fmt.Fprintf(out, "所有无人机任务处理完成，共用时隙：%d\n", result.Slots)
	}
}
