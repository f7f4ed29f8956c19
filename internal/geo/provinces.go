// Package geo holds the static province reference table used by the
// geographic rollup. Provinces absent from this table are excluded from
// the rollup output; the data itself is a fixed external lookup.
package geo

// Point is a province centroid.
type Point struct {
	Lat float64
	Lon float64
}

// provinces maps province name to map coordinates. "Unknown" points at the
// center of China so sentinel-filled customers still render.
var provinces = map[string]Point{
	"Beijing":        {39.9042, 116.4074},
	"Shanghai":       {31.2304, 121.4737},
	"Guangdong":      {23.1291, 113.2644},
	"Jiangsu":        {32.0603, 118.7969},
	"Zhejiang":       {30.2741, 120.1551},
	"Hubei":          {30.5844, 114.2986},
	"Shaanxi":        {34.3416, 108.9398},
	"Sichuan":        {30.5728, 104.0668},
	"Henan":          {34.7580, 113.6494},
	"Hunan":          {28.1127, 112.9838},
	"Shandong":       {36.6512, 117.1201},
	"Fujian":         {26.0789, 119.2965},
	"Anhui":          {31.8612, 117.2849},
	"Heilongjiang":   {45.7560, 126.6422},
	"Liaoning":       {41.7968, 123.4292},
	"Jilin":          {43.8868, 125.3245},
	"Hebei":          {38.0428, 114.5149},
	"Shanxi":         {37.8735, 112.5624},
	"Hainan":         {20.0174, 110.3492},
	"Gansu":          {36.0611, 103.8343},
	"Guizhou":        {26.6470, 106.6302},
	"Yunnan":         {25.0456, 102.7100},
	"Qinghai":        {36.6232, 101.7788},
	"Ningxia":        {38.4680, 106.2735},
	"Xinjiang":       {43.7930, 87.6271},
	"Tibet":          {29.6469, 91.1172},
	"Inner Mongolia": {40.8175, 111.6708},
	"Guangxi":        {22.8176, 108.3669},
	"Jiangxi":        {28.6765, 115.8922},
	"Chongqing":      {29.5630, 106.5516},
	"Unknown":        {35.8617, 104.1954},
}

// Lookup returns the coordinates for a province, if known.
func Lookup(province string) (Point, bool) {
	p, ok := provinces[province]
	return p, ok
}
