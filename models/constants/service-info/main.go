package serviceInfo

import "fmt"

type ServiceInfo string

var (
	SERVICE_NAME        ServiceInfo = "Case Review Service"
	SERVICE_WELCOME     ServiceInfo = "Welcome to the Case Review data API!"
	SERVICE_DESCRIPTION ServiceInfo = "Variant and RNA-seq outlier case review service for a genomics platform node."
	SERVICE_CONTACT     ServiceInfo = "mailto:support@casereview.local"

	SERVICE_ARTIFACT    ServiceInfo = "casereview"
	SERVICE_VERSION     ServiceInfo = "0.1.0"
	SERVICE_TYPE_NO_VER ServiceInfo = ServiceInfo(fmt.Sprintf("org.casereview:%s", SERVICE_ARTIFACT))
	SERVICE_ID          ServiceInfo = SERVICE_TYPE_NO_VER
	SERVICE_TYPE        ServiceInfo = ServiceInfo(fmt.Sprintf("%s:%s", SERVICE_TYPE_NO_VER, SERVICE_VERSION))
)
