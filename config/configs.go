package config

import (
	"encoding/xml"
	"fmt"
	"os"
)

var MainRouter string
var DSN string
var Host string
var Dbname string
var Download string
var DeviceName string
var MainConfig Config

type Config struct {
	XMLName    xml.Name `xml:"config"`
	MainRouter string   `xml:"MainRouter"`
	Dbname     string   `xml:"dbname"`
	Host       string   `xml:"host"`
	Port       string   `xml:"port"`
	Username   string   `xml:"user"`
	Password   string   `xml:"password"`
	Download   string   `xml:"download"`
	DeviceName string   `xml:"DeviceName"`
}

func init() {

	xmlFile, err := os.Open("config.xml")
	if err != nil {
		fmt.Println("Error  opening  file:", err)
		setDefaults()
		return
	}
	defer xmlFile.Close()

	xmlDecoder := xml.NewDecoder(xmlFile)
	err = xmlDecoder.Decode(&MainConfig)
	if err != nil {
		fmt.Println("Error  decoding  XML:", err)
		setDefaults()
		return
	}
	MainRouter = MainConfig.MainRouter
	Host = MainConfig.Host
	Dbname = MainConfig.Dbname
	Download = MainConfig.Download
	DeviceName = MainConfig.DeviceName

	if MainRouter == "" {
		MainRouter = "0.0.0.0:8427"
	}
	if Download == "" {
		Download = "./Data"
	}

	DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC", MainConfig.Host, MainConfig.Username, MainConfig.Password, MainConfig.Dbname, MainConfig.Port)

}

func setDefaults() {
	MainRouter = "0.0.0.0:8427"
	Download = "./Data"
	DeviceName = "本地"
}
