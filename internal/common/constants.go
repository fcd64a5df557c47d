package common

const (
	AppUserService    = "user-service"
	AppCatalogService = "catalog-service"
	AppCartService    = "cart-service"
	AppOrderService   = "order-service"
	AppChannelService = "channel-service"
	AppAdminService   = "admin-service"
	AppMainHandcraft  = "handcraft"
	AudienceStorefront = "audience-storefront"

	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)
