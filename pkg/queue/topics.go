// Package queue 定义消息主题常量与通配模式，供发布/订阅使用.
package queue

// 主题命名规范：sv.<域>.<动作>[.<状态>]，尽量稳定且向后兼容.
// 域：site(站点生命周期)、deploy(部署流程)、env(环境变量)
// 状态：完成(ed)、失败(failed)

const (
	// 站点生命周期领域.
	TopicSiteCreated = "sv.site.created" // 站点注册完成
	TopicSiteDeleted = "sv.site.deleted" // 站点及其文件被删除

	// 部署领域.
	TopicSiteDeployed     = "sv.site.deployed"      // 部署完成且记录已落库
	TopicSiteDeployFailed = "sv.site.deploy.failed" // 部署在任一阶段失败

	// 环境变量领域.
	TopicSiteEnvReplaced = "sv.site.env.replaced" // 站点环境变量集合被整体替换
)

// 主题分组，用于批量操作或权限控制.
var (
	// 站点生命周期相关主题集合.
	SiteTopics = []string{
		TopicSiteCreated, TopicSiteDeleted,
	}

	// 部署相关主题集合.
	DeployTopics = []string{
		TopicSiteDeployed, TopicSiteDeployFailed,
	}

	// 环境变量相关主题集合.
	EnvTopics = []string{
		TopicSiteEnvReplaced,
	}
)
