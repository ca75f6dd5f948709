// Package mentorship 导师申请生命周期客户端
//
// 负责申请的发送、同意、拒绝与撤回，以及收发列表、导师面板统计和推荐流查询。
// 后端是状态的唯一权威：本地列表只在后端确认成功后才应用状态变更。
// 列表类查询失败时返回空结果（不报错），变更类操作的错误总是返回给调用方。
package mentorship
